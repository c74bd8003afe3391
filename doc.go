// Package mdimport holds the account book that broker exports are reconciled
// against: accounts, securities with their dated price snapshots, and the
// deferred price updates staged by an import.
//
// The core functionalities include:
//   - Account Tree: investment accounts identified by number or name, holding
//     one security account per security, plus bank accounts.
//   - Securities: a ticker indexed table of securities, each with a current
//     price and a history of snapshots.
//   - Staged Updates: SecurityHandler and PriceChanges collect the price
//     changes found by an import until they are explicitly applied.
//   - Data Persistence: the book lives in a folder of human-readable JSONL
//     files that can be version controlled.
//
// This package serves as the foundational logic for the `mdimport`
// command-line tool and its importers (fwimport, yqimport).
package mdimport
