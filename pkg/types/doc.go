// Package types holds the small set of types shared by every pnpkit package:
// the typed error model, configuration-manager return codes and the node
// search mode.
//
// Design goals:
//   - Typed errors with stable categories (not-found/type/unsupported/...).
//   - Native status codes preserved on every platform failure.
//   - No dependency on the native platform; everything here builds on any OS.
package types
