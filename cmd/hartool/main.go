// hartool - inspect and filter HTTP Archive (HAR) files
package main

import "github.com/getmockd/hartool/pkg/cli"

func main() {
	cli.Execute()
}
