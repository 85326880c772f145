package cmd

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// unmarshalYAMLFile reads path and unmarshals its contents into out.
func unmarshalYAMLFile(path string, out interface{}) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(buf, out)
}

// check prints err and exits the process if err is non-nil.
func check(err error) {
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
