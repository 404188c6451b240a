package token

// Tokenize scans all of d. Text bodies following a text opener
// (`#marker>`) are returned as TText and TTextClose tokens. On error the
// tokens scanned so far are returned with the error.
func Tokenize(d []byte) ([]Token, error) {
	s := NewScanner(d)
	var res []Token
	for {
		t, err := s.Next()
		if err != nil {
			return res, err
		}
		if t.Type == TEOF {
			return res, nil
		}
		res = append(res, *t)
		if t.Type != THash {
			continue
		}
		marker := ""
		nt, err := s.Next()
		if err != nil {
			return res, err
		}
		if nt.Type == TIdent {
			res = append(res, *nt)
			marker = string(nt.Bytes)
			nt, err = s.Next()
			if err != nil {
				return res, err
			}
		}
		if nt.Type != TRAngle {
			return res, UnexpectedErr(nt.Type.String(), nt.Pos)
		}
		res = append(res, *nt)
		text, closer, err := s.RawText(marker)
		if err != nil {
			return res, err
		}
		res = append(res, *text, *closer)
	}
}
