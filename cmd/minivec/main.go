// SPDX-License-Identifier: Apache-2.0

// Command minivec inspects the block layouts and growth behavior of
// minivec vectors.
package main

func main() {
	execute()
}
