package mongodb

var TranslateError = translateError
