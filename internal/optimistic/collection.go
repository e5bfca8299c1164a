package optimistic

// collection — упорядоченная коллекция записей с индексом по идентичности.
// Не потокобезопасна, защищается мьютексом Store.
type collection[E any] struct {
	order []Identity
	items map[Identity]E
}

func newCollection[E any]() *collection[E] {
	return &collection[E]{items: make(map[Identity]E)}
}

func (c *collection[E]) len() int { return len(c.order) }

func (c *collection[E]) get(k Identity) (E, bool) {
	v, ok := c.items[k]
	return v, ok
}

// prepend вставляет запись в начало, чтобы новая запись сразу была видна.
func (c *collection[E]) prepend(k Identity, v E) {
	if _, ok := c.items[k]; ok {
		c.items[k] = v
		return
	}
	c.order = append([]Identity{k}, c.order...)
	c.items[k] = v
}

func (c *collection[E]) append(k Identity, v E) {
	if _, ok := c.items[k]; ok {
		c.items[k] = v
		return
	}
	c.order = append(c.order, k)
	c.items[k] = v
}

func (c *collection[E]) set(k Identity, v E) bool {
	if _, ok := c.items[k]; !ok {
		return false
	}
	c.items[k] = v
	return true
}

func (c *collection[E]) remove(k Identity) bool {
	if _, ok := c.items[k]; !ok {
		return false
	}
	delete(c.items, k)
	for i, o := range c.order {
		if o == k {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// swap заменяет идентичность и значение на той же позиции.
// Если запись с новой идентичностью уже есть в другом месте, она удаляется.
func (c *collection[E]) swap(from, to Identity, v E) bool {
	if _, ok := c.items[from]; !ok {
		return false
	}
	if from != to {
		if _, dup := c.items[to]; dup {
			c.remove(to)
		}
		delete(c.items, from)
		for i, o := range c.order {
			if o == from {
				c.order[i] = to
				break
			}
		}
	}
	c.items[to] = v
	return true
}

func (c *collection[E]) records() []Record[E] {
	out := make([]Record[E], 0, len(c.order))
	for _, k := range c.order {
		out = append(out, Record[E]{Identity: k, Value: c.items[k]})
	}
	return out
}
