// Package basket provides restartable sources of item baskets.
//
// What:
//
//   - Basket is one transaction: the ordered tokens of a single input line.
//   - Source yields a fresh Cursor per Open call, so a consumer may re-scan
//     the same data several times (the A-Priori miner scans once per
//     itemset size).
//   - FileSource reads a text file, one basket per line, items separated by
//     whitespace. Empty lines are empty baskets and still count toward the
//     basket total.
//   - SliceSource serves baskets from memory, for tests and programmatic use.
//
// Why:
//
//   - The miner needs multiple ordered passes over static input; keeping the
//     restart contract in the source keeps the counting passes pure.
//
// Errors:
//
//   - ErrNoPath: FileSource constructed with an empty path.
//   - I/O failures are wrapped with the file path for context.
package basket
