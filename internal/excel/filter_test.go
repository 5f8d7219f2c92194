package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDriverName(t *testing.T) {
	cases := []struct {
		name   string
		driver string
		ok     bool
	}{
		{"plain name", "John Smith", true},
		{"hyphenated", "Mary-Ann Lee", true},
		{"admin marker", "ADMIN", false},
		{"test marker anywhere", "TEST DRIVER", false},
		{"unknown marker", "Unknown", false},
		{"invoice reference", "INVOICE 4412", false},
		{"credit memo reference", "Credit Memo 88", false},
		{"email address", "dispatch@br.example", false},
		{"office dispatcher", "Melissa", false},
		{"digits", "Driver 2", false},
		{"punctuation", "J. Smith", false},
		{"empty", "  ", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reject := ValidateDriverName(tc.driver)
			if tc.ok {
				assert.Nil(t, reject)
			} else {
				assert.NotNil(t, reject)
			}
		})
	}
}

func TestValidateCustomerName(t *testing.T) {
	assert.Nil(t, ValidateCustomerName("Acme Corp"))
	assert.Nil(t, ValidateCustomerName("Tony's Pizza & Pasta"))

	assert.NotNil(t, ValidateCustomerName("ops@example.com"))
	assert.NotNil(t, ValidateCustomerName("A"))

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}
	assert.NotNil(t, ValidateCustomerName(string(long)))
}

func TestValidateCustomerNameBoilerplate(t *testing.T) {
	// Case, spacing, trailing punctuation and dash variants must all match.
	variants := []string{
		"All invoices must be signed by the receiver",
		"ALL  INVOICES MUST BE SIGNED BY THE RECEIVER.",
		"End of route – return all paperwork to the office",
		"end of route - return all paperwork to the office",
	}
	for _, v := range variants {
		assert.NotNil(t, ValidateCustomerName(v), "variant %q must be rejected", v)
	}
}

func TestValidateSequence(t *testing.T) {
	seq, reject := ValidateSequence(NewCellValue("7"))
	require.Nil(t, reject)
	assert.Equal(t, 7, seq)

	_, reject = ValidateSequence(NewCellValue("abc"))
	assert.NotNil(t, reject)

	_, reject = ValidateSequence(NewCellValue("10000"))
	assert.NotNil(t, reject)

	_, reject = ValidateSequence(NewCellValue(""))
	assert.NotNil(t, reject)

	seq, reject = ValidateSequence(NewCellValue("0"))
	require.Nil(t, reject)
	assert.Equal(t, 0, seq)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "B&R Foods", SanitizeName("B&R Foods"))
	assert.Equal(t, "Tony's Deli", SanitizeName("Tony's Deli"))
	assert.Equal(t, "scriptAcme/script", SanitizeName("<script>Acme</script>"))
	assert.Equal(t, "Acme Corp", SanitizeName("  Acme Corp\t\n"))
	assert.Equal(t, "Quote Co", SanitizeName(`"Quote" Co`))
}
