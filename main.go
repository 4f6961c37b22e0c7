// SPDX-License-Identifier: MPL-2.0

package main

import cmd "unitload/cmd/unitload"

func main() {
	cmd.Execute()
}
