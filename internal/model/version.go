package model

// Version is the released version of pathedit.
const Version = "0.3.0"
