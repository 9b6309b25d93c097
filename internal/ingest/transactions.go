// Package ingest reads donation transactions from JSON, NDJSON and YAML
// files and writes them back out.
package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rshade/ecoshare/internal/impact"
	"github.com/rshade/ecoshare/internal/logging"
)

// StdinPath is the path argument that reads from standard input.
const StdinPath = "-"

const maxLineBytes = 1024 * 1024

// document is the wrapped form {"transactions": [...]}.
type document struct {
	Transactions []impact.Transaction `json:"transactions" yaml:"transactions"`
}

// ParseKind maps the accepted spellings of a transaction kind onto
// impact.Kind. Matching is case-insensitive.
func ParseKind(s string) (impact.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "food":
		return impact.KindFood, nil
	case "non-food", "nonfood", "non_food", "item":
		return impact.KindNonFood, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// LoadFile reads transactions from path, choosing the decoder by extension.
// The path "-" reads JSON from standard input.
func LoadFile(ctx context.Context, path string) ([]impact.Transaction, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "ingest").
		Str("operation", "load_file").
		Str("path", path).
		Msg("loading transactions")

	if path == StdinPath {
		return LoadReader(ctx, os.Stdin)
	}

	format, err := formatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().
			Str("component", "ingest").
			Err(err).
			Str("path", path).
			Msg("failed to read transaction file")
		return nil, fmt.Errorf("reading transactions from %s: %w", path, err)
	}

	var txns []impact.Transaction
	switch format {
	case formatNDJSON:
		txns, err = decodeNDJSON(data)
	case formatYAML:
		txns, err = decodeYAML(data)
	default:
		txns, err = decodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	normalize(txns)

	log.Debug().
		Str("component", "ingest").
		Str("path", path).
		Int("transaction_count", len(txns)).
		Msg("transactions loaded")

	return txns, nil
}

// LoadReader reads a JSON array or {"transactions": [...]} document from r.
func LoadReader(ctx context.Context, r io.Reader) ([]impact.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}

	txns, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	normalize(txns)

	logging.FromContext(ctx).Debug().
		Str("component", "ingest").
		Int("transaction_count", len(txns)).
		Msg("transactions read from stream")

	return txns, nil
}

// LoadFiles loads every path concurrently and concatenates the results in
// argument order. The first error cancels the remaining loads.
func LoadFiles(ctx context.Context, paths []string) ([]impact.Transaction, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}

	results := make([][]impact.Transaction, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			txns, err := LoadFile(gctx, path)
			if err != nil {
				return err
			}
			results[i] = txns
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	all := make([]impact.Transaction, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// FilterByDonor returns the transactions given by donor.
func FilterByDonor(txns []impact.Transaction, donor impact.DonorID) []impact.Transaction {
	out := make([]impact.Transaction, 0, len(txns))
	for _, tx := range txns {
		if tx.Donor == donor {
			out = append(out, tx)
		}
	}
	return out
}

type fileFormat int

const (
	formatJSON fileFormat = iota
	formatNDJSON
	formatYAML
)

func formatFor(path string) (fileFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".ndjson", ".jsonl":
		return formatNDJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func decodeJSON(data []byte) ([]impact.Transaction, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []impact.Transaction{}, nil
	}

	if trimmed[0] == '[' {
		var txns []impact.Transaction
		if err := json.Unmarshal(trimmed, &txns); err != nil {
			return nil, fmt.Errorf("decoding transaction array: %w", err)
		}
		return txns, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decoding transaction document: %w", err)
	}
	if doc.Transactions == nil {
		return []impact.Transaction{}, nil
	}
	return doc.Transactions, nil
}

func decodeNDJSON(data []byte) ([]impact.Transaction, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)

	txns := []impact.Transaction{}
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var tx impact.Transaction
		if err := json.Unmarshal(text, &tx); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txns = append(txns, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning NDJSON: %w", err)
	}
	return txns, nil
}

func decodeYAML(data []byte) ([]impact.Transaction, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decoding YAML: %w", err)
	}
	if len(node.Content) == 0 {
		return []impact.Transaction{}, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var txns []impact.Transaction
		if err := root.Decode(&txns); err != nil {
			return nil, fmt.Errorf("decoding transaction list: %w", err)
		}
		return txns, nil
	}

	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding transaction document: %w", err)
	}
	if doc.Transactions == nil {
		return []impact.Transaction{}, nil
	}
	return doc.Transactions, nil
}

// normalize rewrites recognized kinds to their canonical spelling and fills
// in a missing status. Unrecognized kinds are kept as given; summaries never
// read them and ValidateKinds rejects them where an impact must be computed.
func normalize(txns []impact.Transaction) {
	for i := range txns {
		if kind, err := ParseKind(string(txns[i].Kind)); err == nil {
			txns[i].Kind = kind
		}
		if txns[i].Status == "" {
			txns[i].Status = defaultStatus(&txns[i])
		}
	}
}

func defaultStatus(tx *impact.Transaction) impact.Status {
	if tx.HasImpact() {
		return impact.StatusCompleted
	}
	return impact.StatusListed
}

// ValidateKinds returns an error wrapping ErrUnknownKind for the first
// transaction that still needs an impact record but has no recognized kind.
func ValidateKinds(txns []impact.Transaction) error {
	for i := range txns {
		if txns[i].HasImpact() {
			continue
		}
		if _, err := ParseKind(string(txns[i].Kind)); err != nil {
			return fmt.Errorf("transaction %d (id %q): %w", i, txns[i].ID, err)
		}
	}
	return nil
}

// WriteJSON writes txns to w as an indented JSON array.
func WriteJSON(w io.Writer, txns []impact.Transaction) error {
	if txns == nil {
		txns = []impact.Transaction{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(txns); err != nil {
		return fmt.Errorf("encoding transactions: %w", err)
	}
	return nil
}
