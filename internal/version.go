package internal

// Version is the wordenrich release, shown by --version.
const Version = "0.3.0"
