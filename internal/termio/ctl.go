package termio

import (
	"strings"
)

// Control bytes the interpreter reacts to.
const (
	ETX = 0x03 // ^C, break
	EOT = 0x04 // ^D, end of input in raw mode
	BS  = 0x08
	LF  = 0x0A
	CR  = 0x0D
	DEL = 0x7F
)

// Control names a control byte.
type Control struct {
	N string
	B byte
}

// C0Ctls contains the classic ASCII control characters.
var C0Ctls = [32]Control{
	{"<NUL>", 0x00}, {"<SOH>", 0x01}, {"<STX>", 0x02}, {"<ETX>", 0x03},
	{"<EOT>", 0x04}, {"<ENQ>", 0x05}, {"<ACK>", 0x06}, {"<BEL>", 0x07},
	{"<BS>", 0x08}, {"<HT>", 0x09}, {"<NL>", 0x0A}, {"<VT>", 0x0B},
	{"<NP>", 0x0C}, {"<CR>", 0x0D}, {"<SO>", 0x0E}, {"<SI>", 0x0F},
	{"<DLE>", 0x10}, {"<DC1>", 0x11}, {"<DC2>", 0x12}, {"<DC3>", 0x13},
	{"<DC4>", 0x14}, {"<NAK>", 0x15}, {"<SYN>", 0x16}, {"<ETB>", 0x17},
	{"<CAN>", 0x18}, {"<EM>", 0x19}, {"<SUB>", 0x1A}, {"<ESC>", 0x1B},
	{"<FS>", 0x1C}, {"<GS>", 0x1D}, {"<RS>", 0x1E}, {"<US>", 0x1F},
}

// DelCtl names the delete byte.
var DelCtl = Control{"<DEL>", DEL}

// Name returns the mnemonic of a control byte, its caret form for bytes with
// the high bit set, or the byte itself quoted.
func Name(b byte) string {
	switch {
	case b < 0x20:
		return C0Ctls[b].N
	case b == DEL:
		return DelCtl.N
	case b >= 0x80:
		return "<" + CaretForm(b&0x7f) + "|0x80>"
	}
	return string(rune(b))
}

// CaretForm computes the ^-escaped printable form of a control byte, e.g.
// "^C" for ETX; it returns "" for printable bytes.
func CaretForm(b byte) string {
	if b < 0x20 || b == DEL {
		return "^" + string(rune(b^0x40))
	}
	return ""
}

// controlWords maps mnemonics and caret forms to bytes.
var controlWords map[string]byte

func init() {
	controlWords = make(map[string]byte, 2*(len(C0Ctls)+1))
	for _, ctl := range append(C0Ctls[:], DelCtl) {
		controlWords[ctl.N] = ctl.B
		controlWords[CaretForm(ctl.B)] = ctl.B
	}
}

// Expand replaces every control mnemonic in s, such as "<CR>" or "<ETX>",
// with the byte it names; unknown mnemonics are left alone.
func Expand(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	var sb strings.Builder
	for len(s) > 0 {
		i := strings.IndexByte(s, '<')
		if i < 0 {
			break
		}
		j := strings.IndexByte(s[i:], '>')
		if j < 0 {
			break
		}
		sb.WriteString(s[:i])
		word := s[i : i+j+1]
		if b, ok := controlWords[word]; ok {
			sb.WriteByte(b)
		} else {
			sb.WriteString(word)
		}
		s = s[i+j+1:]
	}
	sb.WriteString(s)
	return sb.String()
}

// Quote is the inverse of Expand, rendering control bytes as mnemonics while
// keeping CR and LF readable as "\r" and "\n".
func Quote(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch b := s[i]; {
		case b == CR:
			sb.WriteString(`\r`)
		case b == LF:
			sb.WriteString(`\n`)
		case b < 0x20 || b >= DEL:
			sb.WriteString(Name(b))
		default:
			sb.WriteByte(b)
		}
	}
	return sb.String()
}
