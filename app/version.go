package app

const FifotaxVersion = "0.1.0"
