package ds

// Stack is a LIFO of values; the zero value is ready to use.
type Stack[T any] struct {
	slice []T
}

func NewStack[T any]() *Stack[T] {
	return &Stack[T]{
		slice: make([]T, 0, 8),
	}
}

func (r *Stack[T]) Len() int {
	return len(r.slice)
}

func (r *Stack[T]) Push(t T) T {
	r.slice = append(r.slice, t)
	return t
}

// Pop removes the top value; ok is false on an empty stack.
func (r *Stack[T]) Pop() (t T, ok bool) {
	if r.Len() == 0 {
		return t, false
	}
	last := r.slice[r.Len()-1]
	r.slice = r.slice[:r.Len()-1]
	return last, true
}

func (r *Stack[T]) Peek() (t T, ok bool) {
	if r.Len() == 0 {
		return t, false
	}
	return r.slice[r.Len()-1], true
}

// Values lists the stack from bottom to top.
func (r *Stack[T]) Values() []T {
	values := make([]T, len(r.slice))
	copy(values, r.slice)
	return values
}
