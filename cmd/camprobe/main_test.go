package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"help", []string{"-help"}, 0},
		{"unknown flag", []string{"--bogus"}, 2},
		{"invalid size", []string{"--width", "-1"}, 2},
		{"invalid index", []string{"-d", "abc", "--log-level", "error"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mainE(tt.args), "%v", tt.args)
		})
	}
}
