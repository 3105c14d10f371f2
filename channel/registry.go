package channel

import (
	"github.com/ChristianF88/atmsettle/extract"
	"github.com/ChristianF88/atmsettle/money"
)

// init populates registry with every channel this build recognises. New
// channels are added here, as a row, never by touching the parser.
func init() {
	register(&Descriptor{
		ID:          CIS,
		DisplayName: "CIS",
		Delimiter:   Caret,
		Aliases:     []string{"CIS"},
		Reference:   refDigitsField(1),
		Amount:      amountDecimalField(2),
		Date:        dateRawField(0),
	})

	register(&Descriptor{
		ID:          PNB,
		DisplayName: "PNB",
		Delimiter:   Caret,
		Aliases:     []string{"PNB"},
		Reference:   refDigitsField(4),
		Amount:      amountDecimalField(6),
		Date:        dateRawField(1),
	})

	register(&Descriptor{
		ID:          BDO,
		DisplayName: "BDO",
		Delimiter:   Pipe,
		Aliases:     []string{"BDO"},
		Reference:   refDigitsField(5),
		Amount:      amountDecimalField(9),
		Date:        dateRawField(2),
	})

	register(&Descriptor{
		ID:          ECPAY,
		DisplayName: "ECPAY",
		Delimiter:   Comma,
		Aliases:     []string{"ECPAY", "EC PAY"},
		Reference:   refDigitsField(5),
		Amount:      amountDecimalField(6),
		Date:        dateRawField(2),
	})

	register(&Descriptor{
		ID:          CEBUANA,
		DisplayName: "CEBUANA",
		Delimiter:   Comma,
		Aliases:     []string{"CEBUANA", "CEBUANA LHUILLIER", "CEBUANA LHUILIER"},
		Reference:   refDigitsField(4),
		Amount:      amountDecimalField(6),
		Date:        dateRawField(2),
	})

	register(&Descriptor{
		ID:          PERALINK,
		DisplayName: "PERALINK",
		Delimiter:   Comma,
		Aliases:     []string{"PERALINK"},
		Reference:   refDigitsField(4),
		Amount:      amountDecimalField(6),
		Date:        dateRawField(2),
	})

	register(&Descriptor{
		ID:          CHINABANK,
		DisplayName: "CHINABANK",
		Delimiter:   Whitespace,
		Aliases:     []string{"CHINABANK", "CHINA BANK"},
		Reference:   refDigitsField(3),
		Amount:      amountDecimalField(2),
		Date:        dateSlashInsertField(0),
	})

	register(&Descriptor{
		ID:          METROBANK,
		DisplayName: "METROBANK",
		Delimiter:   Whitespace,
		Aliases:     []string{"METROBANK", "METRO", "METRO BANK"},
		Reference:   refCharsField(1),
		Amount: func(l Line) (money.Cents, bool) {
			digits, ok := extract.MetrobankAmount(l.Raw)
			if !ok {
				return 0, false
			}
			return extract.CentsDigits(digits)
		},
		Date: func(l Line) (string, bool) {
			if len(l.Fields) == 0 {
				return "", false
			}
			digits, ok := extract.MetrobankDate(l.Fields[len(l.Fields)-1])
			if !ok {
				return "", false
			}
			return extract.SlashInsert(digits), true
		},
	})

	register(&Descriptor{
		ID:          UNIONBANK,
		DisplayName: "UNIONBANK",
		Delimiter:   Positional,
		Aliases:     []string{"UNIONBANK", "UB", "UNION BANK"},
		Reference: func(l Line) (string, bool) {
			return extract.UnionbankReference(l.Raw, Split(l.Raw, Whitespace)), true
		},
		Amount: func(l Line) (money.Cents, bool) {
			digits, ok := extract.UnionbankAmount(l.Raw)
			if !ok {
				return 0, false
			}
			return extract.CentsDigits(digits)
		},
		Date: func(l Line) (string, bool) {
			digits, ok := extract.UnionbankDate(l.Raw)
			if !ok {
				return "", false
			}
			return extract.SlashInsert(digits), true
		},
		Continuation:          true,
		ContinuationThreshold: extract.ContinuationThreshold,
	})

	register(&Descriptor{
		ID:          SM,
		DisplayName: "SM",
		Delimiter:   Positional,
		Aliases:     []string{"SM"},
		Reference: func(l Line) (string, bool) {
			return extract.SMReference(l.Raw)
		},
		Amount: func(l Line) (money.Cents, bool) {
			digits, ok := extract.SMAmount(l.Raw)
			if !ok {
				return 0, false
			}
			return extract.CentsDigits(digits)
		},
		Date: func(l Line) (string, bool) {
			return extract.SMDate(l.Raw)
		},
	})

	register(&Descriptor{
		ID:          BANCNET,
		DisplayName: "BANCNET",
		Delimiter:   Positional,
		Aliases:     []string{"BANCNET"},
		Reference: func(l Line) (string, bool) {
			return extract.BancnetReference(l.Raw)
		},
		Amount: func(l Line) (money.Cents, bool) {
			digits, ok := extract.BancnetAmount(l.Raw)
			if !ok {
				return 0, false
			}
			cents, ok := extract.CentsDigits(digits)
			if !ok {
				return 0, false
			}
			// Channel-specific bound, tighter than the global sanity range.
			if cents <= 0 || cents >= 1_000_000*100 {
				return 0, false
			}
			return cents, true
		},
		Date: func(l Line) (string, bool) {
			return extract.BancnetDate(l.Raw)
		},
	})

	register(&Descriptor{
		ID:          ROB,
		DisplayName: "ROB",
		Delimiter:   MixedCaretPipe,
		Aliases:     []string{"ROB", "ROBINSONS", "ROBINSON", "ROBINSONS BANK", "ROBINSON BANK", "ROBINSONS_BANK"},
		Reference:   refCharsField(4),
		Amount:      amountDecimalField(6),
		Date:        dateRawField(0),
	})
}

// refDigitsField builds a Reference rule for "field[i], digits-only, first 4".
func refDigitsField(i int) func(Line) (string, bool) {
	return func(l Line) (string, bool) {
		return extract.FirstNDigitsOnly(l.Field(i), 4)
	}
}

// refCharsField builds a Reference rule for "field[i], first 4 chars", with
// no digit filtering (METROBANK, ROB).
func refCharsField(i int) func(Line) (string, bool) {
	return func(l Line) (string, bool) {
		return extract.FirstNChars(l.Field(i), 4)
	}
}

// amountDecimalField builds an Amount rule for "field[i] as decimal".
func amountDecimalField(i int) func(Line) (money.Cents, bool) {
	return func(l Line) (money.Cents, bool) {
		return extract.DecimalAmount(l.Field(i))
	}
}

// dateRawField builds a Date rule returning field[i] verbatim.
func dateRawField(i int) func(Line) (string, bool) {
	return func(l Line) (string, bool) {
		f := l.Field(i)
		return f, f != ""
	}
}

// dateSlashInsertField builds a Date rule for "field[i] as MMDDYYYY ->
// MM/DD/YYYY".
func dateSlashInsertField(i int) func(Line) (string, bool) {
	return func(l Line) (string, bool) {
		f := l.Field(i)
		if len(f) < 6 {
			return "", false
		}
		return extract.SlashInsert(f), true
	}
}
