package catalog

// SampleBooks is the catalog a fresh development server starts with.
var SampleBooks = []Book{
	{
		Title:        "Laskar Pelangi",
		Author:       "Andrea Hirata",
		Description:  "Ten children from Belitung and the two teachers who keep their school open.",
		Introduction: "The school will close if fewer than ten pupils enrol.",
		ReleaseDate:  "2005-09-01",
		Price:        89000,
	},
	{
		Title:        "Bumi Manusia",
		Author:       "Pramoedya Ananta Toer",
		Description:  "Minke, a Javanese student, comes of age under Dutch colonial rule.",
		Introduction: "Surabaya, at the turn of the twentieth century.",
		ReleaseDate:  "1980-08-25",
		Price:        135000,
	},
	{
		Title:        "Cantik Itu Luka",
		Author:       "Eka Kurniawan",
		Description:  "Dewi Ayu rises from the grave after twenty one years.",
		Introduction: "One afternoon on a weekend in March.",
		ReleaseDate:  "2002-01-01",
		Price:        125000,
	},
	{
		Title:        "The Go Programming Language",
		Author:       "Alan A. A. Donovan, Brian W. Kernighan",
		Description:  "The authoritative introduction to Go.",
		Introduction: "Hello, World.",
		ReleaseDate:  "2015-10-26",
		Price:        650000,
	},
}

// Seed adds books to the store and returns them with their ids.
func (s *Store) Seed(books []Book) ([]Book, error) {
	seeded := make([]Book, 0, len(books))
	for _, b := range books {
		created, err := s.CreateBook(b)
		if err != nil {
			return nil, err
		}
		seeded = append(seeded, created)
	}
	return seeded, nil
}
