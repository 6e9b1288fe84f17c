// Package compiler translates rizz source into C.
//
// Pipeline: source → Lex → Parse → Analyze → Generate → C translation unit
//
// Reserved words are slang spellings (looksmaxxing declares, skibidi defines
// a function, sus/sussy branch, edge loops, sigma returns, and rizz, fanumtax,
// gyatt, mog are + - * /). Blocks open with >> and close with <<, and every
// simple statement ends with |.
package compiler
