package cmd

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/tokenuses/pkg/uses"
)

// decodeData turns a textual argument into raw bytes.
func decodeData(encoding, s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	var (
		data []byte
		err  error
	)
	switch encoding {
	case "hex":
		data, err = hex.DecodeString(strings.TrimPrefix(strings.ReplaceAll(s, " ", ""), "0x"))
	case "base64":
		data, err = base64.StdEncoding.DecodeString(s)
	case "base58":
		data, err = base58.Decode(s)
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s data: %w", encoding, err)
	}
	return data, nil
}

// encodeData renders raw bytes in the requested encoding.
func encodeData(encoding string, data []byte) (string, error) {
	switch encoding {
	case "hex":
		return hex.EncodeToString(data), nil
	case "base64":
		return base64.StdEncoding.EncodeToString(data), nil
	case "base58":
		return base58.Encode(data), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", encoding)
	}
}

// readData takes the record from the first argument, or from stdin when
// there is none or it is "-".
func readData(cmd *cobra.Command, args []string, encoding string) ([]byte, error) {
	var text string
	if len(args) > 0 && args[0] != "-" {
		text = args[0]
	} else {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(raw)
	}
	return decodeData(encoding, text)
}

// decodedUses is the printable form of a decoded, possibly absent, record.
type decodedUses struct {
	Present bool       `json:"present" yaml:"present"`
	Uses    *uses.Uses `json:"uses,omitempty" yaml:"uses,omitempty"`
}

func printUses(w io.Writer, output string, u *uses.Uses) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(decodedUses{Present: u != nil, Uses: u})
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(decodedUses{Present: u != nil, Uses: u}); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		if u == nil {
			_, err := fmt.Fprintln(w, "none")
			return err
		}
		_, err := fmt.Fprintf(w, "useMethod  %s\ntotal      %d\nremaining  %d\n", u.UseMethod, u.Total, u.Remaining)
		return err
	default:
		return fmt.Errorf("unsupported output %q", output)
	}
}
