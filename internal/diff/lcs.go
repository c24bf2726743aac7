package diff

// Sections splits before and after into alternating equal and differing
// runs. Matched elements form a longest common subsequence, so the differing
// runs hold the fewest possible elements. A nil eq is not allowed.
func Sections[T any](before, after []T, eq func(a, b T) bool) []Section {
	prefix := 0
	for prefix < len(before) && prefix < len(after) && eq(before[prefix], after[prefix]) {
		prefix++
	}
	suffix := 0
	for suffix < len(before)-prefix && suffix < len(after)-prefix &&
		eq(before[len(before)-1-suffix], after[len(after)-1-suffix]) {
		suffix++
	}

	var b sectionBuilder
	b.equal(prefix)
	middle(before[prefix:len(before)-suffix], after[prefix:len(after)-suffix], eq, &b)
	b.equal(suffix)
	return b.out
}

// middle walks the LCS table of a and b, emitting runs into b.
func middle[T any](a, c []T, eq func(x, y T) bool, b *sectionBuilder) {
	n, m := len(a), len(c)
	if n == 0 || m == 0 {
		b.differ(n, m)
		return
	}

	// table[i*(m+1)+j] is the LCS length of a[i:] and c[j:].
	w := m + 1
	table := make([]int, (n+1)*w)
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			switch {
			case eq(a[i], c[j]):
				table[i*w+j] = table[(i+1)*w+j+1] + 1
			case table[(i+1)*w+j] >= table[i*w+j+1]:
				table[i*w+j] = table[(i+1)*w+j]
			default:
				table[i*w+j] = table[i*w+j+1]
			}
		}
	}

	i, j := 0, 0
	for i < n && j < m {
		switch {
		case eq(a[i], c[j]):
			b.equal(1)
			i++
			j++
		case table[(i+1)*w+j] >= table[i*w+j+1]:
			b.differ(1, 0)
			i++
		default:
			b.differ(0, 1)
			j++
		}
	}
	b.differ(n-i, m-j)
}

// sectionBuilder merges adjacent runs of the same kind.
type sectionBuilder struct {
	out []Section
}

func (b *sectionBuilder) equal(n int) {
	if n == 0 {
		return
	}
	if last := len(b.out) - 1; last >= 0 && b.out[last].Equal {
		b.out[last].Len1 += n
		b.out[last].Len2 += n
		return
	}
	b.out = append(b.out, Section{Equal: true, Len1: n, Len2: n})
}

func (b *sectionBuilder) differ(n1, n2 int) {
	if n1 == 0 && n2 == 0 {
		return
	}
	if last := len(b.out) - 1; last >= 0 && !b.out[last].Equal {
		b.out[last].Len1 += n1
		b.out[last].Len2 += n2
		return
	}
	b.out = append(b.out, Section{Len1: n1, Len2: n2})
}
