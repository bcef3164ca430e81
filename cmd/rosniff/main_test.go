package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/ronet/internal/capture"
)

func TestSniffMissingFile(t *testing.T) {
	var out bytes.Buffer
	err := sniff(&out, filepath.Join(t.TempDir(), "absent.pcap"), capture.DefaultPorts, false, false)
	assert.Error(t, err)
}

func TestSniffEmptyCapture(t *testing.T) {
	// Заголовок pcap без пакетов: magic, версия 2.4, snaplen 65536, Ethernet.
	header := []byte{
		0xd4, 0xc3, 0xb2, 0xa1,
		0x02, 0x00, 0x04, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x01, 0x00,
		0x01, 0x00, 0x00, 0x00,
	}
	path := filepath.Join(t.TempDir(), "empty.pcap")
	require.NoError(t, os.WriteFile(path, header, 0o600))

	var out bytes.Buffer
	require.NoError(t, sniff(&out, path, capture.DefaultPorts, true, false))

	text := out.String()
	assert.Contains(t, text, "PROTOCOL")
	assert.Contains(t, text, "packets:        0")
}

func TestPrintStats(t *testing.T) {
	var out bytes.Buffer
	printStats(&out, []capture.Stat{
		{Protocol: capture.ProtocolZone, Direction: capture.ToClient, ID: 0x0283, Name: "ZC_AID", Count: 2, Bytes: 12},
	})

	text := out.String()
	assert.Contains(t, text, "zone")
	assert.Contains(t, text, "S->C")
	assert.Contains(t, text, "0x0283")
	assert.Contains(t, text, "ZC_AID")
}
