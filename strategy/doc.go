// Package strategy defines the operator numbers understood by the gist and
// spgist support functions.
//
// A strategy number encodes the subtype of the query argument and the
// relational operator applied to it:
//
//	number = group*GroupOffset + operator
//
// where group is the geom.Kind of the query (0 point, 1 lseg, 2 line, 3 box,
// 4 path, 5 polygon, 6 sphere) and operator is one of the Operator constants.
// Decode reverses the encoding and rejects anything outside that range with
// ErrInvalidStrategy.
package strategy
