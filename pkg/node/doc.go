// Package node turns one GitHub operation and a list of items into REST calls
// and reshapes the responses into output items.
//
// An operation is addressed by an OperationKey (resource and operation, such
// as issue:create). Route resolves the key against a fixed table of
// definitions and builds a RequestSpec from the item's parameters. Routing is
// pure: it never touches the network, so unknown keys and missing parameters
// are reported before any request is sent.
//
// Executor runs a RequestSpec through a Caller, one item at a time in order.
// It looks up the current file SHA before file edits and deletes, drives
// Link-header pagination for list operations and merges each response into
// the output according to the operation's ResponseShape:
//
//   - PassThrough keeps the input item and discards the response; file:get
//     with a binary property attaches the decoded content to a copy
//   - ReplaceSingle appends the response object to the accumulated results
//   - ReplaceFlatten appends every element of an array response
//
// Failures are reported as *Error values carrying an ErrorKind
// (configuration, usage or upstream) and the failing key and item index.
package node
