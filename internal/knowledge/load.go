package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/garyellow/sookmyung-chatbot-go/internal/r2client"
)

// R2Prefix marks a knowledge source that lives in R2 object storage.
const R2Prefix = "r2://"

// ObjectFetcher fetches objects by key. *r2client.Client satisfies it.
type ObjectFetcher interface {
	Get(ctx context.Context, key string) (*r2client.Object, error)
}

// ErrNoFetcher is returned when an r2:// source is requested without a fetcher.
var ErrNoFetcher = errors.New("knowledge: r2 source requires an object fetcher")

// Load builds a Table from source:
//   - ""            the built-in table
//   - "r2://<key>"  an object fetched through fetcher
//   - any other     a local file path
//
// Sources ending in ".zst" are zstd-compressed. The payload is a JSON array
// of entries with "id", "keywords" and "content" fields.
func Load(ctx context.Context, source string, fetcher ObjectFetcher) (*Table, error) {
	if source == "" {
		return Default(), nil
	}

	var (
		data []byte
		err  error
	)
	if key, ok := strings.CutPrefix(source, R2Prefix); ok {
		data, err = fetchObject(ctx, fetcher, key)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("knowledge: read %q: %w", source, err)
	}

	if strings.HasSuffix(source, ".zst") {
		data, err = r2client.Decompress(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("knowledge: %q: %w", source, err)
		}
	}

	return Parse(data)
}

func fetchObject(ctx context.Context, fetcher ObjectFetcher, key string) ([]byte, error) {
	if fetcher == nil {
		return nil, ErrNoFetcher
	}
	obj, err := fetcher.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer obj.Body.Close()
	return io.ReadAll(obj.Body)
}

// Parse decodes a JSON array of entries and validates it into a Table.
func Parse(data []byte) (*Table, error) {
	var entries []Entry
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("knowledge: decode: %w", err)
	}
	return NewTable(entries)
}

// Marshal encodes the table in the format accepted by Parse.
func (t *Table) Marshal() ([]byte, error) {
	return json.MarshalIndent(t.entries, "", "  ")
}
