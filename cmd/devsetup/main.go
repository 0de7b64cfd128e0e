// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/devsetup/cmd/devsetup/cmd"
)

func main() {
	cmd.Execute()
}
