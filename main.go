/*
Copyright © 2026 Glossopoeia
*/
package main

import (
	"github.com/glossopoeia/rewrite/cmd"
)

func main() {
	cmd.Execute()
}
