package main

import (
	"fmt"
	"io"
)

func runDemo(w io.Writer) {
	pos1 := ZeroVector3()

	fmt.Fprintln(w, "Before:")
	fmt.Fprintf(w, "%v\n\n", pos1)

	pos1.X += 1.3
	pos1.Y -= 9.8
	pos1.Normalize()

	fmt.Fprintln(w, "After:")
	fmt.Fprintf(w, "%v\n\n", pos1)

	pos2 := pos1.Copy()

	fmt.Fprintln(w, "Vector3_2:")
	fmt.Fprintf(w, "%v\n\n", pos2)
}
