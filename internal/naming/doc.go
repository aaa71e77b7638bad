// Package naming provides the key normalizer and case helpers shared by the
// asyncspec packages.
//
// [ClearKey] turns raw channel names, message titles and schema names into
// component keys that are safe inside a "/"-delimited reference path such as
// "#/components/schemas/<key>". [ToPascalCase] derives schema names for Go
// types that have none of their own.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
