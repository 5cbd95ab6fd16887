package main

//
// Values are 8-bit signed integers.  Every arithmetic result is
// computed in a wider int and then narrowed, which in Go is a two's
// complement truncation, e.g. 100 + 100 gives -56.  Division truncates
// toward zero before narrowing, so -128 / -1 gives -128
//

func narrow(n int) int8 {

	return int8(n)
}

func isArithOp(ch byte) bool {

	switch ch {
	case '+', '-', '*', '/':
		return true
	}

	return false
}

func applyArithOp(op byte, lhs, rhs int8) (int8, error) {

	switch op {
	default:
		fatalError("unexpected operator " + string(op))

	case '+':
		return narrow(int(lhs) + int(rhs)), nil

	case '-':
		return narrow(int(lhs) - int(rhs)), nil

	case '*':
		return narrow(int(lhs) * int(rhs)), nil

	case '/':
		if rhs == 0 {
			return 0, runtimeError(EDIVISIONBYZERO)
		}

		return narrow(int(lhs) / int(rhs)), nil
	}

	panic(nil) // avoid compiler complaint
}

//
// expression := term ( ('+'|'-'|'*'|'/') term )*
//
// There is no operator precedence.  Terms are combined strictly left
// to right, so A + B * C is (A + B) * C.  On error the returned value
// is 0 and must not be used
//

func (ip *interp) evaluateExpr(c *cursor) (int8, error) {

	result, err := ip.evaluateTerm(c)
	if err != nil {
		return 0, err
	}

	for {
		c.skipWhitespace()

		op := c.peek()
		if !isArithOp(op) {
			return result, nil
		}

		c.advance()

		term, err := ip.evaluateTerm(c)
		if err != nil {
			return 0, err
		}

		if result, err = applyArithOp(op, result, term); err != nil {
			return 0, err
		}
	}
}

//
// term := variable | '(' expression ')' | signed-integer-literal
//

func (ip *interp) evaluateTerm(c *cursor) (int8, error) {

	c.skipWhitespace()

	slot, ok, err := c.scanVariable()
	if err != nil {
		return 0, err
	} else if ok {
		return ip.vars.fetch(slot), nil
	}

	if c.peek() == '(' {
		c.advance()

		val, err := ip.evaluateExpr(c)
		if err != nil {
			return 0, err
		}

		c.skipWhitespace()

		if c.peek() != ')' {
			return 0, runtimeError(EEXPECTEDRPAREN)
		}

		c.advance()

		return val, nil
	}

	return c.scanLiteral()
}

//
// The IF comparison operators.  '<' followed by '>' is always '<>';
// there is no '<=' or '>='
//

func scanRelOp(c *cursor) (string, error) {

	c.skipWhitespace()

	switch c.peek() {
	case '=':
		c.advance()
		return "=", nil

	case '<':
		c.advance()
		if c.peek() == '>' {
			c.advance()
			return "<>", nil
		}
		return "<", nil

	case '>':
		c.advance()
		return ">", nil
	}

	return "", runtimeError(EEXPECTEDOPERATOR)
}

func compareValues(op string, lhs, rhs int8) bool {

	switch op {
	default:
		fatalError("unexpected comparison " + op)

	case "=":
		return lhs == rhs

	case "<>":
		return lhs != rhs

	case "<":
		return lhs < rhs

	case ">":
		return lhs > rhs
	}

	panic(nil) // avoid compiler complaint
}
