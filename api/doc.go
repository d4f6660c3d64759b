// Package api defines the shared contracts and error types of the
// kopimashin benchmark harness.
// Author: payamazadi <payamazadi@gmail.com>
// License: Apache-2.0
package api
