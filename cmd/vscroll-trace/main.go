// Command vscroll-trace replays scripted scroll sessions through the vscroll
// engine and prints every change set it emits.
//
// Usage:
//
//	vscroll-trace run --config list.yaml session.yaml
//	vscroll-trace window --items 1000 --height 50 --client 500 --offset 9000
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
