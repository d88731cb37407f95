package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budgettracker/internal/encoding"
)

func TestNewUTF8Reader(t *testing.T) {
	type testCase struct {
		name        string
		input       []byte
		want        string
		wantCharset encoding.Charset
	}

	tests := []testCase{
		{
			name:        "UTF8Passthrough",
			input:       []byte("Title;Amount\nCafé;12,50\nCrème brûlée;-3,00\n"),
			want:        "Title;Amount\nCafé;12,50\nCrème brûlée;-3,00\n",
			wantCharset: encoding.UTF8,
		},
		{
			name:        "UTF8BOMStripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, "Título;Valor\n"...),
			want:        "Título;Valor\n",
			wantCharset: encoding.UTF8BOM,
		},
		{
			// ç = 0xE7, ã = 0xE3 in windows-1252.
			name:  "Latin1",
			input: []byte{'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';', 'V', 'a', 'l', 'o', 'r', '\n'},
			want:  "Descrição;Valor\n",
		},
		{
			name:        "UTF16LE",
			input:       []byte{0xFF, 0xFE, 'T', 0, 'i', 0, 't', 0, 'l', 0, 'e', 0},
			want:        "Title",
			wantCharset: encoding.UTF16LE,
		},
		{
			name:        "Empty",
			input:       nil,
			want:        "",
			wantCharset: encoding.UTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(tt.input))
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)

			assert.Equal(t, tt.want, string(got))
			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			}
		})
	}
}
