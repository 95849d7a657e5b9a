package intcode_test

import (
	"fmt"

	"github.com/Princic-1837592/advent-of-code-sub001/intcode"
)

func ExampleParse() {
	m, err := intcode.Parse("1,9,10,3,2,3,11,0,99,30,40,50")
	if err != nil {
		panic(err)
	}
	if err := m.RunUntilComplete(); err != nil {
		panic(err)
	}
	fmt.Println(m.Peek(0))
	// Output:
	// 3500
}

// A program that doubles every input it is given, driven one interrupt at
// a time.
func ExampleMachine_RunUntilInterrupt() {
	m, err := intcode.Parse("3,20,1002,20,2,20,4,20,1105,1,0")
	if err != nil {
		panic(err)
	}
	for _, v := range []int64{1, 5, -3} {
		it := m.RunUntilInterrupt()
		fmt.Println(it)
		m.Push(v)
		fmt.Println(m.RunUntilInterrupt())
	}
	// Output:
	// needs input
	// produced output 2
	// needs input
	// produced output 10
	// needs input
	// produced output -6
}

func ExampleMachine_Clone() {
	m, err := intcode.ParseWithInput("3,0,3,1,2,0,1,0,4,0,99", 6)
	if err != nil {
		panic(err)
	}
	m.RunUntilInterrupt()
	for _, v := range []int64{7, 8} {
		c := m.Clone()
		c.Push(v)
		if err := c.RunUntilComplete(); err != nil {
			panic(err)
		}
		fmt.Println(c.Output())
	}
	fmt.Println(m.Pending(), m.Output())
	// Output:
	// [42]
	// [48]
	// 0 []
}
