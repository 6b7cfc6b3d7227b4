package slack

// SplitText exposes splitText for tests
var SplitText = splitText
