package classfile

// Fuzz is a go-fuzz entry point over the decoder: feed it arbitrary bytes
// and it reports whether they decoded as a well-formed class file.
func Fuzz(data []byte) int {
	cf, err := Parse(data)
	if err != nil {
		return 0
	}
	if _, err := cf.ClassName(); err != nil {
		return 0
	}
	return 1
}
