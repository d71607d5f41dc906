// Command generate-config prints a config file populated with defaults.
package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/amoreira/letterpress/internal/config"
)

func main() {
	out := flag.String("o", "", "write to file instead of stdout")
	flag.Parse()

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating config:", err)
		os.Exit(1)
	}

	if *out == "" {
		fmt.Print(string(data))
		return
	}

	if _, err := os.Stat(*out); err == nil {
		fmt.Fprintln(os.Stderr, *out, "already exists, refusing to overwrite")
		os.Exit(1)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing config:", err)
		os.Exit(1)
	}
	fmt.Println("Wrote", *out)
}
