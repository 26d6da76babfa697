package code

import "regexp"

// importPattern matches a quoted specifier inside a block's private
// namespace, capturing the quote and the namespace kind
var importPattern = regexp.MustCompile(`(["'])@/registry/blocks/[^/"'\s]+/(components|ui|lib|hooks)/`)

var publicPrefixes = map[string]string{
	"components": "@/components/",
	"ui":         "@/components/ui/",
	"lib":        "@/lib/",
	"hooks":      "@/hooks/",
}

// RewriteImports maps private block imports to their public paths:
//
//	"@/registry/blocks/<block>/components/x" -> "@/components/x"
//	"@/registry/blocks/<block>/ui/x"         -> "@/components/ui/x"
//	"@/registry/blocks/<block>/lib/x"        -> "@/lib/x"
//	"@/registry/blocks/<block>/hooks/x"      -> "@/hooks/x"
//
// Everything else is left as is.
func RewriteImports(src string) string {
	return importPattern.ReplaceAllStringFunc(src, func(m string) string {
		sub := importPattern.FindStringSubmatch(m)
		return sub[1] + publicPrefixes[sub[2]]
	})
}
