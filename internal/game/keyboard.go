package game

// Keyboard tracks the most informative mark seen for every letter.
type Keyboard [26]Mark

// Add folds one guess into the keyboard.
func (k *Keyboard) Add(g Guess) {
	for i, m := range g.Result {
		j := idx(g.Word.At(i))
		if k[j] < m {
			k[j] = m
		}
	}
}

// Status returns the mark for an upper-case letter.
func (k *Keyboard) Status(letter byte) Mark { return k[idx(letter)] }
