// Command ledgerctl manages signer keys and builds signed instruction
// headers for the donation ledger API.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "keygen":
		return runKeygenCommand(args[1:], stdout, stderr)
	case "pubkey":
		return runPubkeyCommand(args[1:], stdout, stderr)
	case "derive":
		return runDeriveCommand(args[1:], stdout, stderr)
	case "sign":
		return runSignCommand(args[1:], stdout, stderr)
	case "operator-token":
		return runOperatorTokenCommand(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n", args[0])
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ledgerctl <command> [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  keygen --out <file>                          Generate an Ed25519 signer key into a keystore file")
	fmt.Fprintln(w, "  pubkey <file>                                Print the signer identity of a keystore file")
	fmt.Fprintln(w, "  derive [--program-id <id>] <store|user-store> <pubkey>")
	fmt.Fprintln(w, "                                               Derive a record address and bump")
	fmt.Fprintln(w, "  sign --key <file> --path <path> [--method POST] [--body <json> | --body-file <file>]")
	fmt.Fprintln(w, "                                               Print the four signer headers for a request")
	fmt.Fprintln(w, "  operator-token [--config <file>] [--subject <name>]")
	fmt.Fprintln(w, "                                               Issue an operator JWT from the server config")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "The keystore passphrase is read from %s or prompted for.\n", passphraseEnv)
}
