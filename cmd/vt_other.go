//go:build !windows

package main

func enableVT() {}
