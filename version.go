package hsm

// Version is the current release of the hsm module.
const Version = "0.1.0"
