package main

import (
	"github.com/Rakhulsr/go-petshop/app/cmd"
	"github.com/Rakhulsr/go-petshop/app/configs"
)

func main() {
	env := configs.LoadEnv()
	cmd.RunCli(env)
}
