package service

import "strings"

// extractTaggedJSON devuelve el bloque entre <BEGIN_JSON> y <END_JSON>,
// o cadena vacía si no hay bloque completo.
func extractTaggedJSON(input string) string {
	start := strings.Index(input, "<BEGIN_JSON>")
	if start == -1 {
		return ""
	}
	rest := input[start+len("<BEGIN_JSON>"):]
	end := strings.Index(rest, "<END_JSON>")
	if end == -1 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}

// extractFirstJSONObject recorre el texto balanceando llaves, respetando
// strings y escapes, y devuelve el primer objeto JSON completo.
func extractFirstJSONObject(input string) string {
	start := strings.IndexByte(input, '{')
	if start == -1 {
		return ""
	}

	inString := false
	escape := false
	depth := 0

	for i := start; i < len(input); i++ {
		ch := input[i]

		if inString {
			if escape {
				escape = false
				continue
			}
			if ch == '\\' {
				escape = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
			if depth < 0 {
				return ""
			}
		}
	}

	return ""
}

// extractJSONPayload intenta primero el bloque etiquetado y después el
// primer objeto balanceado del texto.
func extractJSONPayload(input string) string {
	if block := extractTaggedJSON(input); block != "" {
		return block
	}
	return extractFirstJSONObject(input)
}
