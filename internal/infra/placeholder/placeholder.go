// Package placeholder renders the fallback character artwork shown when the
// image provider is unavailable. Output is a self-contained SVG data URI,
// deterministic for a given type pair so retries render the same card.
package placeholder

import (
	"encoding/base64"
	"fmt"
	"hash/fnv"
)

var palette = [8][2]string{
	{"#FF8A65", "#FFD54F"},
	{"#4FC3F7", "#9575CD"},
	{"#81C784", "#4DB6AC"},
	{"#F06292", "#BA68C8"},
	{"#FFB74D", "#E57373"},
	{"#7986CB", "#64B5F6"},
	{"#A1887F", "#90A4AE"},
	{"#AED581", "#FFF176"},
}

// DataURI builds the placeholder graphic for a result card.
func DataURI(mbtiType, characterCode string) string {
	h := fnv.New32a()
	h.Write([]byte(mbtiType))
	h.Write([]byte(characterCode))
	colors := palette[h.Sum32()%uint32(len(palette))]

	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="512" height="512" viewBox="0 0 512 512">`+
		`<defs><linearGradient id="g" x1="0" y1="0" x2="1" y2="1">`+
		`<stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/>`+
		`</linearGradient></defs>`+
		`<rect width="512" height="512" rx="48" fill="url(#g)"/>`+
		`<circle cx="256" cy="200" r="88" fill="#FFFFFF" fill-opacity="0.9"/>`+
		`<circle cx="226" cy="188" r="10" fill="#37474F"/>`+
		`<circle cx="286" cy="188" r="10" fill="#37474F"/>`+
		`<path d="M 216 232 Q 256 264 296 232" stroke="#37474F" stroke-width="8" fill="none" stroke-linecap="round"/>`+
		`<text x="256" y="360" font-family="sans-serif" font-size="48" font-weight="bold" fill="#FFFFFF" text-anchor="middle">%s</text>`+
		`<text x="256" y="420" font-family="sans-serif" font-size="32" fill="#FFFFFF" fill-opacity="0.85" text-anchor="middle">%s</text>`+
		`</svg>`,
		colors[0], colors[1], mbtiType, characterCode)

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}
