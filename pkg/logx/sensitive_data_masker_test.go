package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"numberlookup/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Phone number",
			input:  []byte(`{"number":"+17182222222","valid":true}`),
			output: []byte(`{"number":"[MASKED]","valid":true}`),
		},
		{
			name:   "Formatted and normalized numbers",
			input:  []byte(`{"formatted_number":"(718) 222-2222","normalized_number":"+17182222222"}`),
			output: []byte(`{"formatted_number":"[MASKED]","normalized_number":"[MASKED]"}`),
		},
		{
			name:   "People search query",
			input:  []byte(`{"query": {"first_name": "John", "last_name": "Doe", "state": "NY"}}`),
			output: []byte(`{"query": {"first_name": "[MASKED]", "last_name": "[MASKED]", "state": "NY"}}`),
		},
		{
			name:   "Address search query",
			input:  []byte(`{"street": "123 Main Street", "city": "New York"}`),
			output: []byte(`{"street": "[MASKED]", "city": "New York"}`),
		},
		{
			name:   "Non-sensitive fields untouched",
			input:  []byte(`{"carrier":"Verizon Wireless","location":"Brooklyn/Queens, New York"}`),
			output: []byte(`{"carrier":"Verizon Wireless","location":"Brooklyn/Queens, New York"}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
