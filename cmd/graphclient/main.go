// Command graphclient is a non-interactive reference client: it reads a
// command script (one command per line) from stdin or a file, writes it to
// a graphserver connection, and prints everything the server sends back
// until the terminating sentinel. It is a smoke-testing aid, not an
// interactive shell.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"net"
	"os"

	"GraphCompute/pipeline"
)

func main() {
	var addr string
	var scriptPath string

	flag.StringVar(&addr, "addr", "127.0.0.1:5555", "graphserver address (host:port)")
	flag.StringVar(&scriptPath, "script", "", "path to a command script (default: stdin)")
	flag.Parse()

	var script io.Reader = os.Stdin
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "graphclient: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		script = f
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "graphclient: dial %s: %v\n", addr, err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := sendScript(conn, script); err != nil {
		fmt.Fprintf(os.Stderr, "graphclient: %v\n", err)
		os.Exit(1)
	}

	if err := printUntilDone(conn, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "graphclient: %v\n", err)
		os.Exit(1)
	}
}

func sendScript(conn net.Conn, script io.Reader) error {
	scanner := bufio.NewScanner(script)
	for scanner.Scan() {
		if _, err := fmt.Fprintf(conn, "%s\n", scanner.Text()); err != nil {
			return fmt.Errorf("write command: %w", err)
		}
	}
	return scanner.Err()
}

func printUntilDone(conn net.Conn, out io.Writer) error {
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			fmt.Fprint(out, line)
		}
		if line == pipeline.DoneSentinel {
			return nil
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read response: %w", err)
		}
	}
}
