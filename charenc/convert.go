package charenc

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Errors reported by the conversion pipeline.
var (
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	ErrInvalidUTF16        = errors.New("invalid UTF-16 sequence")
)

// Decode converts data from enc to UTF-8 with LF line endings and reports
// the line-ending style found in the source. For UTF-16 input the line
// ending is detected after decoding.
func Decode(data []byte, enc Encoding) (text []byte, le LineEnding, err error) {
	switch enc {
	case UTF8:
		le = DetectLineEnding(data)
		return NormalizeLF(data), le, nil
	case UTF8BOM:
		body := bytes.TrimPrefix(data, bomUTF8)
		le = DetectLineEnding(body)
		return NormalizeLF(body), le, nil
	case UTF16LE, UTF16BE:
		decoded, err := decodeUTF16(data[2:], enc == UTF16BE)
		if err != nil {
			return nil, LF, err
		}
		le = DetectLineEnding(decoded)
		return NormalizeLF(decoded), le, nil
	case ShiftJIS, EUCJP:
		decoded, err := decodeJapanese(data, enc)
		if err != nil {
			return nil, LF, err
		}
		le = DetectLineEnding(decoded)
		return NormalizeLF(decoded), le, nil
	default:
		return nil, LF, ErrUnsupportedEncoding
	}
}

// Encode converts UTF-8+LF text back to the on-disk representation: LF is
// expanded to le, then the text is re-encoded to enc. UTF-8 and UTF-8-BOM
// are lossless; Shift_JIS and EUC-JP are best-effort (runes outside the
// target repertoire report ErrUnsupportedEncoding); UTF-16 output is not
// supported.
func Encode(text []byte, enc Encoding, le LineEnding) ([]byte, error) {
	body := ApplyLineEnding(text, le)
	switch enc {
	case UTF8:
		return body, nil
	case UTF8BOM:
		out := make([]byte, 0, len(bomUTF8)+len(body))
		out = append(out, bomUTF8...)
		return append(out, body...), nil
	case ShiftJIS, EUCJP:
		return encodeJapanese(body, enc)
	default:
		return nil, ErrUnsupportedEncoding
	}
}

// decodeUTF16 converts UTF-16 code units (after the BOM) to UTF-8. Lone
// surrogates and truncated pairs are rejected rather than substituted.
func decodeUTF16(data []byte, bigEndian bool) ([]byte, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: odd byte count", ErrInvalidUTF16)
	}
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i < len(data); i += 2 {
		if bigEndian {
			units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
		} else {
			units = append(units, uint16(data[i])|uint16(data[i+1])<<8)
		}
	}

	out := make([]byte, 0, len(units))
	var buf [utf8.UTFMax]byte
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u <= 0xDBFF:
			if i+1 >= len(units) {
				return nil, fmt.Errorf("%w: truncated surrogate pair", ErrInvalidUTF16)
			}
			lo := units[i+1]
			if lo < 0xDC00 || lo > 0xDFFF {
				return nil, fmt.Errorf("%w: unpaired high surrogate", ErrInvalidUTF16)
			}
			r := utf16.DecodeRune(rune(u), rune(lo))
			out = append(out, buf[:utf8.EncodeRune(buf[:], r)]...)
			i++
		case u >= 0xDC00 && u <= 0xDFFF:
			return nil, fmt.Errorf("%w: unpaired low surrogate", ErrInvalidUTF16)
		default:
			out = append(out, buf[:utf8.EncodeRune(buf[:], rune(u))]...)
		}
	}
	return out, nil
}

func japaneseTransformer(enc Encoding, encode bool) transform.Transformer {
	switch {
	case enc == ShiftJIS && encode:
		return japanese.ShiftJIS.NewEncoder()
	case enc == ShiftJIS:
		return japanese.ShiftJIS.NewDecoder()
	case encode:
		return japanese.EUCJP.NewEncoder()
	default:
		return japanese.EUCJP.NewDecoder()
	}
}

func decodeJapanese(data []byte, enc Encoding) ([]byte, error) {
	out, _, err := transform.Bytes(japaneseTransformer(enc, false), data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", enc, err)
	}
	return out, nil
}

func encodeJapanese(text []byte, enc Encoding) ([]byte, error) {
	out, _, err := transform.Bytes(japaneseTransformer(enc, true), text)
	if err != nil {
		// x/text reports unencodable runes as an error; surface that
		// as the spec's encoding failure rather than writing '?'.
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedEncoding, enc, err)
	}
	return out, nil
}

// NormalizeLF rewrites CRLF and lone CR line endings to LF.
func NormalizeLF(data []byte) []byte {
	if bytes.IndexByte(data, '\r') < 0 {
		out := make([]byte, len(data))
		copy(out, data)
		return out
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == '\r' {
			out = append(out, '\n')
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			continue
		}
		out = append(out, data[i])
	}
	return out
}

// ApplyLineEnding expands LF line endings to le. For LF the input is
// returned unchanged.
func ApplyLineEnding(data []byte, le LineEnding) []byte {
	if le == LF {
		return data
	}
	seq := le.Sequence()
	out := make([]byte, 0, len(data)+len(data)/16)
	for _, b := range data {
		if b == '\n' {
			out = append(out, seq...)
			continue
		}
		out = append(out, b)
	}
	return out
}
