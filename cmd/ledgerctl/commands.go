package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"donation-ledger/config"
	"donation-ledger/internal/adapter/http/middleware"
	"donation-ledger/internal/core/domain"
	"donation-ledger/internal/core/pda"
	"donation-ledger/internal/service"
	"donation-ledger/pkg/keystore"

	"github.com/btcsuite/btcutil/base58"
	"github.com/google/uuid"
)

func runKeygenCommand(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var out string
	var force bool
	params := keystore.DefaultParams
	fs.StringVar(&out, "out", "", "Keystore file to write")
	fs.BoolVar(&force, "force", false, "Overwrite an existing keystore file")
	fs.Func("kdf-memory", "Argon2id memory in KiB", parseUint32(&params.Memory))
	fs.Func("kdf-time", "Argon2id iterations", parseUint32(&params.Time))

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, "Usage: keygen --out <file> [--force]")
		return 1
	}
	if strings.TrimSpace(out) == "" {
		fmt.Fprintln(stderr, "Error: --out is required.")
		return 1
	}
	if !force {
		if _, err := os.Stat(out); err == nil {
			fmt.Fprintf(stderr, "Error: %s already exists; pass --force to overwrite.\n", out)
			return 1
		}
	}

	passphrase, err := readPassphrase("Enter new keystore passphrase: ")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		fmt.Fprintf(stderr, "Error: generating key: %v\n", err)
		return 1
	}
	file, err := keystore.Seal(priv, passphrase, params)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := keystore.Save(out, file); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, file.PublicKey)
	return 0
}

func runPubkeyCommand(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "Usage: pubkey <file>")
		return 1
	}
	file, err := keystore.Load(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, file.PublicKey)
	return 0
}

func runDeriveCommand(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("derive", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var programID string
	fs.StringVar(&programID, "program-id", config.DefaultProgramID, "Program id mixed into derived addresses")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, "Usage: derive [--program-id <id>] <store|user-store> <pubkey>")
		return 1
	}
	positional := fs.Args()
	if len(positional) != 2 {
		fmt.Fprintln(stderr, "Error: expected a record kind and an identity.")
		return 1
	}

	var tag string
	switch positional[0] {
	case "store":
		tag = domain.SeedStore
	case "user-store":
		tag = domain.SeedUserStore
	default:
		fmt.Fprintf(stderr, "Error: unknown record kind %q (want store or user-store).\n", positional[0])
		return 1
	}

	program, err := domain.ParsePubkey(programID)
	if err != nil {
		fmt.Fprintf(stderr, "Error: program id: %v\n", err)
		return 1
	}
	identity, err := domain.ParsePubkey(positional[1])
	if err != nil {
		fmt.Fprintf(stderr, "Error: identity: %v\n", err)
		return 1
	}

	addr, bump, err := pda.NewDeriver(program).Find(tag, identity)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "address: %s\nbump: %d\n", addr, bump)
	return 0
}

func runSignCommand(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var keyFile, method, path, body, bodyFile, nonce string
	var timestamp int64
	fs.StringVar(&keyFile, "key", "", "Keystore file of the signer")
	fs.StringVar(&method, "method", http.MethodPost, "HTTP method")
	fs.StringVar(&path, "path", "", "Request path, e.g. /api/v1/instructions/initialize")
	fs.StringVar(&body, "body", "", "Exact request body")
	fs.StringVar(&bodyFile, "body-file", "", "Read the request body from a file")
	fs.StringVar(&nonce, "nonce", "", "Nonce (default: random UUID)")
	fs.Int64Var(&timestamp, "timestamp", 0, "Unix seconds (default: now)")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, "Usage: sign --key <file> --path <path> [--method POST] [--body <json> | --body-file <file>]")
		return 1
	}
	if keyFile == "" || path == "" {
		fmt.Fprintln(stderr, "Error: --key and --path are required.")
		return 1
	}
	if body != "" && bodyFile != "" {
		fmt.Fprintln(stderr, "Error: --body and --body-file are mutually exclusive.")
		return 1
	}
	if bodyFile != "" {
		raw, err := os.ReadFile(bodyFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error: reading body: %v\n", err)
			return 1
		}
		body = string(raw)
	}
	if nonce == "" {
		nonce = uuid.NewString()
	}
	if timestamp == 0 {
		timestamp = time.Now().Unix()
	}

	priv, err := openKeystore(keyFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	canonical := service.NewEd25519SignatureService().BuildCanonicalString(strings.ToUpper(method), path, timestamp, nonce, body)
	signature := ed25519.Sign(priv, []byte(canonical))

	fmt.Fprintf(stdout, "%s: %s\n", middleware.HeaderSigner, base58.Encode(priv.Public().(ed25519.PublicKey)))
	fmt.Fprintf(stdout, "%s: %s\n", middleware.HeaderSignature, base58.Encode(signature))
	fmt.Fprintf(stdout, "%s: %d\n", middleware.HeaderTimestamp, timestamp)
	fmt.Fprintf(stdout, "%s: %s\n", middleware.HeaderNonce, nonce)
	return 0
}

func runOperatorTokenCommand(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("operator-token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configPath, subject string
	fs.StringVar(&configPath, "config", "", "Server config file (default: ./config.yaml, DLG_ env)")
	fs.StringVar(&subject, "subject", "operator", "Token subject")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, "Usage: operator-token [--config <file>] [--subject <name>]")
		return 1
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if cfg.Operator.JWTSecret == "" {
		fmt.Fprintln(stderr, "Error: operator.jwt_secret is not configured.")
		return 1
	}

	token, expiresAt, err := service.NewJWTTokenService(cfg.Operator.JWTSecret, cfg.Operator.JWTExpiry, cfg.Operator.JWTIssuer).Generate(subject)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, token)
	fmt.Fprintf(stderr, "expires: %s\n", expiresAt.UTC().Format(time.RFC3339))
	return 0
}

func openKeystore(path string) (ed25519.PrivateKey, error) {
	file, err := keystore.Load(path)
	if err != nil {
		return nil, err
	}
	passphrase, err := readPassphrase("Enter keystore passphrase: ")
	if err != nil {
		return nil, err
	}
	priv, err := file.Open(passphrase)
	if errors.Is(err, keystore.ErrWrongPassphrase) {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	return priv, err
}

func parseUint32(dst *uint32) func(string) error {
	return func(s string) error {
		var v uint32
		if _, err := fmt.Sscan(s, &v); err != nil {
			return fmt.Errorf("invalid value %q", s)
		}
		*dst = v
		return nil
	}
}
