package repository

var SetIfVersionScript = setIfVersion
