package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAccepted(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-bill", "237", "-cash", "500"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "Change to Return: ₹263.00")
	assert.Contains(t, out, "₹200 Note")
	assert.Contains(t, out, "₹1 Coin")
	assert.Contains(t, out, "Total Notes/Coins: 5")
	assert.NotContains(t, out, "Not returned")
}

func TestRunFractionalChange(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-bill", "100.50", "-cash", "200"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "Not returned:      ₹0.50")
}

func TestRunExactPayment(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-bill", "100", "-cash", "100"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "Exact amount paid! No change to return.\n", stdout.String())
}

func TestRunRejected(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-bill", "500", "-cash", "237"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "cash_given: Cash given is less than bill amount!")
}

func TestRunJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-bill", "237", "-cash", "500", "-json"}, &stdout, &stderr)
	require.Equal(t, 0, code)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, "263.00", out["change"])
}

func TestRunBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-nope"}, &stdout, &stderr))
}

func TestRunBadDenominations(t *testing.T) {
	t.Setenv("DENOMINATIONS", "5,2")
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run([]string{"-bill", "1", "-cash", "2"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "invalid denominations")
}
