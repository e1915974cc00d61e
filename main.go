package main

import "github.com/inovacc/consultas/cmd"

func main() {
	cmd.Execute()
}
