// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/yyr/cedet/cmd/cedet"

func main() {
	cmd.Execute()
}
