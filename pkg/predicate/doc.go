// Package predicate recognizes and evaluates short comparisons of integer sums, such as
// "duration + 2 days >= 30 days".
//
// Both sides of a predicate are sums of terms joined by "+". A term is either a non-negative integer
// literal or the name of a variable from the Config. If the Config has a NumberSuffix, every integer
// literal must carry it, while variables may. Supported comparators are <, <=, >, >= and =.
//
//	ok, err := predicate.Evaluate("val + bar + 24 > 24", &predicate.Config{
//		Variables: map[string]int64{"val": 24, "bar": 25},
//	})
package predicate
