package printer

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lines strips control sequences and returns the printable lines
func lines(data []byte) []string {
	data = bytes.TrimPrefix(data, []byte{ESC, '@'})
	var out []string
	for _, l := range strings.Split(string(data), "\n") {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func TestDocument_KeyValue(t *testing.T) {
	doc := NewDocument(20)
	doc.KeyValue("Total:", "₹120.50")

	got := lines(doc.Bytes())
	require.Len(t, got, 1)
	assert.Equal(t, 20, len([]rune(got[0])))
	assert.True(t, strings.HasPrefix(got[0], "Total:"))
	assert.True(t, strings.HasSuffix(got[0], "₹120.50"))
}

func TestDocument_ItemLineTruncatesLongNames(t *testing.T) {
	doc := NewDocument(Width58mm)
	doc.ItemLine("2", "Basmati Rice Premium Long Grain 5kg", "240.00")

	got := lines(doc.Bytes())
	require.Len(t, got, 1)
	assert.Equal(t, Width58mm, len([]rune(got[0])))
	assert.True(t, strings.HasPrefix(got[0], "2x Basmati"))
	assert.True(t, strings.HasSuffix(got[0], " 240.00"))
}

func TestDocument_Row(t *testing.T) {
	doc := NewDocument(16)
	doc.Row(
		Column{Text: "Qty", Width: 4},
		Column{Text: "Item"},
		Column{Text: "Amt", Width: 5, AlignRight: true},
	)

	got := lines(doc.Bytes())
	require.Len(t, got, 1)
	assert.Equal(t, "Qty Item     Amt", got[0])
}

func TestDocument_SeparatorAndReset(t *testing.T) {
	doc := NewDocument(0)
	assert.Equal(t, Width58mm, doc.Width())
	doc.Separator('=')
	assert.Equal(t, []string{strings.Repeat("=", Width58mm)}, lines(doc.Bytes()))

	doc.Reset()
	assert.Equal(t, []byte{ESC, '@'}, doc.Bytes())
}

func TestNewPrinterFromConfig(t *testing.T) {
	p, err := NewPrinterFromConfig(Config{})
	require.NoError(t, err)
	assert.False(t, p.IsConnected(context.Background()))
	assert.NoError(t, p.Print(context.Background(), []byte("x")))

	_, err = NewPrinterFromConfig(Config{Type: TypeUSB})
	assert.Error(t, err)
	_, err = NewPrinterFromConfig(Config{Type: TypeNetwork})
	assert.Error(t, err)
	_, err = NewPrinterFromConfig(Config{Type: "bluetooth"})
	assert.Error(t, err)
}

func TestUSBPrinter_WritesToDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	p, err := NewPrinterFromConfig(Config{Type: TypeUSB, USBPath: path})
	require.NoError(t, err)
	assert.True(t, p.IsConnected(context.Background()))
	require.NoError(t, p.Print(context.Background(), []byte("receipt")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "receipt", string(data))
}

func TestNetworkPrinter_SendsBytes(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	p := NewNetworkPrinter(ln.Addr().String())
	require.NoError(t, p.Print(context.Background(), []byte("hello")))
	assert.Equal(t, "hello", string(<-received))
}
