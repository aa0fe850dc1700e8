package translator

// Polyfill identifiers. The preamble is materialized in this fixed order
// regardless of discovery order, so output is stable across runs.
const (
	helperIdx         = "IDX"
	helperZip         = "ZIP"
	helperDefaultDict = "DEFAULTDICT"
	helperCounter     = "COUNTER"
	helperHeap        = "HEAP"
	helperSum         = "SUM"
	helperSorted      = "SORTED"
	helperReversed    = "REVERSED"
)

var helperOrder = []string{
	helperIdx, helperZip, helperDefaultDict, helperCounter,
	helperHeap, helperSum, helperSorted, helperReversed,
}

var helperCode = map[string][]string{
	helperIdx: {
		"function __idx(arr, i) { return i < 0 ? arr.length + i : i; }",
	},
	helperZip: {
		"function __zip(...arrs) {",
		"  const m = Math.min(...arrs.map(a => a.length));",
		"  return Array.from({length: m}, (_, i) => arrs.map(a => a[i]));",
		"}",
	},
	helperDefaultDict: {
		"function __defaultdict(factory) {",
		"  return new Proxy({}, {",
		"    get(t, k) { if (!(k in t)) t[k] = factory(); return t[k]; },",
		"    set(t, k, v) { t[k] = v; return true; }",
		"  });",
		"}",
	},
	helperCounter: {
		"function __counter(seq) {",
		"  const c = {};",
		"  for (const x of seq) { c[x] = (c[x] || 0) + 1; }",
		"  return c;",
		"}",
	},
	helperHeap: {
		"function __heappush(h, x) {",
		"  h.push(x);",
		"  let i = h.length - 1;",
		"  while (i > 0) {",
		"    const p = (i - 1) >> 1;",
		"    if (h[p] <= h[i]) break;",
		"    [h[p], h[i]] = [h[i], h[p]];",
		"    i = p;",
		"  }",
		"}",
		"function __heappop(h) {",
		"  if (h.length === 0) return undefined;",
		"  const top = h[0];",
		"  const x = h.pop();",
		"  if (h.length) {",
		"    h[0] = x;",
		"    let i = 0, n = h.length;",
		"    while (true) {",
		"      let l = 2 * i + 1, r = l + 1, s = i;",
		"      if (l < n && h[l] < h[s]) s = l;",
		"      if (r < n && h[r] < h[s]) s = r;",
		"      if (s === i) break;",
		"      [h[i], h[s]] = [h[s], h[i]];",
		"      i = s;",
		"    }",
		"  }",
		"  return top;",
		"}",
	},
	helperSum: {
		"const __sum = arr => arr.reduce((a, b) => a + b, 0);",
	},
	helperSorted: {
		"const __sorted = arr => [...arr].sort((a, b) => a - b);",
	},
	helperReversed: {
		"const __reversed = arr => [...arr].reverse();",
	},
}

// helperPreamble renders the polyfills for every required helper.
func (c *TranslationContext) helperPreamble() []string {
	var code []string
	for _, id := range helperOrder {
		if c.helpersNeeded[id] {
			code = append(code, helperCode[id]...)
		}
	}
	return code
}
