/* Command gobasic is a line oriented BASIC interpreter whose whole state lives
in one fixed size byte arena.

Typed lines that start with a number are stored as program text; a bare
number deletes its line. Any other line runs immediately. Stored lines are
kept compacted: keywords and operators as single high-bit bytes, and numeric
literals as tagged little-endian binary, while identifiers, strings and REM
text stay verbatim. LIST expands them back into text.

The arena holds, from the bottom up: program text, variables, arrays, free
space, and the control stack. Growing any of them into the free space, or
pushing a stack frame that does not fit, raises OUT OF MEMORY rather than
growing the process.

Statements

	[LET] V = EXPR             V(I, ...) = EXPR
	PRINT [ITEM {, | ; ITEM}]  ITEM = EXPR | TAB(EXPR)
	INPUT ["PROMPT";] V {, V}
	IF EXPR THEN LINE | IF EXPR THEN STATEMENT | IF EXPR GOTO LINE
	GOTO EXPR                  GOSUB EXPR               RETURN
	FOR V = EXPR TO EXPR [STEP EXPR]                    NEXT [V]
	DIM V(EXPR {, EXPR}) {, ...}
	REM TEXT                   END                      STOP
	NEW   RUN [LINE]   LIST [START][-[STOP]]   SAVE   LOAD   DUMP [VARS | ARRAYS]

Several statements may share a line, separated by ':'.

Variables

Names are letters and digits; only their first 8 bytes, sigil included, are
kept. The trailing sigil picks the type: '%' integer, '%%' long integer (with
-longs), '!' boolean, '$' string of at most 32 bytes. Unsuffixed names are
integers, or reals when -reals is given.

Functions

	ABS SGN INT SQR SIN COS TAN ATN EXP LOG RND   RANDOMIZE SEED
	LEN ASC CHR$ LEFT$ RIGHT$ MID$ STR$ VAL

Storage

SAVE and LOAD move the program text to and from a storage slot, framed by a
length and a checksum: process memory (-storage mem), a file (-storage
file:PATH), or a named row in a SQLite database (-storage sqlite:PATH -slot
NAME).

Program files named on the command line are fed as typed input before
standard input; a terminal is put into raw mode, where ^C breaks a running
program and ^D ends input. -transcript FILE keeps a copy of all output.
*/
package main
