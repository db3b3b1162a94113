// Copyright 2025 Redpanda Data, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command toonpack shrinks JSON documents into TOON envelopes and back.
//
//	toonpack encode [flags] < doc.json > doc.tpk
//	toonpack decode [flags] < doc.tpk > doc.json
//	toonpack stats  [flags] < doc.json
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

const usage = `usage: toonpack <command> [flags]

commands:
  encode   read JSON on stdin, write a sealed envelope on stdout
  decode   read a sealed envelope on stdin, write JSON on stdout
  stats    read JSON on stdin, report token savings

Run "toonpack <command> --help" for command flags.
`

var errUsage = errors.New("usage")

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var cmd func([]string, io.Reader, io.Writer, io.Writer) error
	switch args[0] {
	case "encode":
		cmd = encodeCommand
	case "decode":
		cmd = decodeCommand
	case "stats":
		cmd = statsCommand
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "toonpack: unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err := cmd(args[1:], stdin, stdout, stderr); err != nil {
		if errors.Is(err, errUsage) {
			return 2
		}
		fmt.Fprintf(stderr, "toonpack %s: %v\n", args[0], err)
		return 1
	}
	return 0
}
