/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/mfukushima/recipechat/cmd"

func main() {
	cmd.Execute()
}
